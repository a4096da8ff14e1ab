package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/dentaldesk/pkg/api"
)

const ScheduleServiceName = "dentaldesk.v1.ScheduleService"

const (
	ScheduleServiceGetDayScheduleProcedure = "/dentaldesk.v1.ScheduleService/GetDaySchedule"
	ScheduleServiceWatchNowMarkerProcedure = "/dentaldesk.v1.ScheduleService/WatchNowMarker"
)

// ScheduleServiceHandler serves the day schedule grid.
type ScheduleServiceHandler interface {
	GetDaySchedule(context.Context, *connect.Request[api.GetDayScheduleRequest]) (*connect.Response[api.GetDayScheduleResponse], error)
	// WatchNowMarker streams one marker per refresh tick until the client disconnects.
	WatchNowMarker(context.Context, *connect.Request[api.WatchNowMarkerRequest], *connect.ServerStream[api.WatchNowMarkerResponse]) error
}

// NewScheduleServiceHandler returns the mount path and handler for the service.
func NewScheduleServiceHandler(svc ScheduleServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ScheduleServiceName + "/", route(map[string]http.Handler{
		ScheduleServiceGetDayScheduleProcedure: connect.NewUnaryHandler(ScheduleServiceGetDayScheduleProcedure, svc.GetDaySchedule, opts...),
		ScheduleServiceWatchNowMarkerProcedure: connect.NewServerStreamHandler(ScheduleServiceWatchNowMarkerProcedure, svc.WatchNowMarker, opts...),
	})
}

type ScheduleServiceClient interface {
	GetDaySchedule(context.Context, *connect.Request[api.GetDayScheduleRequest]) (*connect.Response[api.GetDayScheduleResponse], error)
	WatchNowMarker(context.Context, *connect.Request[api.WatchNowMarkerRequest]) (*connect.ServerStreamForClient[api.WatchNowMarkerResponse], error)
}

func NewScheduleServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ScheduleServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &scheduleServiceClient{
		getDaySchedule: connect.NewClient[api.GetDayScheduleRequest, api.GetDayScheduleResponse](httpClient, baseURL+ScheduleServiceGetDayScheduleProcedure, opts...),
		watchNowMarker: connect.NewClient[api.WatchNowMarkerRequest, api.WatchNowMarkerResponse](httpClient, baseURL+ScheduleServiceWatchNowMarkerProcedure, opts...),
	}
}

type scheduleServiceClient struct {
	getDaySchedule *connect.Client[api.GetDayScheduleRequest, api.GetDayScheduleResponse]
	watchNowMarker *connect.Client[api.WatchNowMarkerRequest, api.WatchNowMarkerResponse]
}

func (c *scheduleServiceClient) GetDaySchedule(ctx context.Context, req *connect.Request[api.GetDayScheduleRequest]) (*connect.Response[api.GetDayScheduleResponse], error) {
	return c.getDaySchedule.CallUnary(ctx, req)
}

func (c *scheduleServiceClient) WatchNowMarker(ctx context.Context, req *connect.Request[api.WatchNowMarkerRequest]) (*connect.ServerStreamForClient[api.WatchNowMarkerResponse], error) {
	return c.watchNowMarker.CallServerStream(ctx, req)
}
