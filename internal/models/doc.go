// Package models defines the domain models for the DentalDesk backend.
//
// # Reference data
//
// Providers, appointments, procedures, insured patients, the patient directory and the
// waitlist are read-only seed data for a session:
//   - Provider: one lane of the schedule grid
//   - Appointment: a booking on a provider's lane for the operating day
//   - Procedure: a billable catalog item with a billing code and unit price
//   - Patient: a row of the patient directory
//
// # Session state
//
// CartSession is the only mutable state. It holds the line items of the invoice being
// built in one dashboard view; totals are always derived, never stored.
//
// # Conventions
//
//  1. Money is integer cents (Money), never floating point
//  2. Relationships use ID values instead of pointers
//  3. Timestamps on stored records are Unix seconds
package models
