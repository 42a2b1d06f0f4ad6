package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified name of the show service.
const ServiceName = "showfinder.v1.ShowService"

const (
	searchShowsMethod = "/" + ServiceName + "/SearchShows"
	getEpisodesMethod = "/" + ServiceName + "/GetEpisodes"
)

// ShowServiceServer is the server API for the show service. Requests and
// responses are protobuf well-known types: a search takes the query as a
// StringValue, an episode listing takes the show id as an Int64Value, and
// both answer with a ListValue of structs.
type ShowServiceServer interface {
	SearchShows(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error)
	GetEpisodes(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.ListValue, error)
}

// RegisterShowServiceServer registers srv on s.
func RegisterShowServiceServer(s grpc.ServiceRegistrar, srv ShowServiceServer) {
	s.RegisterService(&ShowServiceDesc, srv)
}

// ShowServiceDesc describes the show service for grpc.Server.
var ShowServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ShowServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SearchShows", Handler: searchShowsHandler},
		{MethodName: "GetEpisodes", Handler: getEpisodesHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "showfinder/v1/show_service.proto",
}

func searchShowsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShowServiceServer).SearchShows(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: searchShowsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ShowServiceServer).SearchShows(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func getEpisodesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShowServiceServer).GetEpisodes(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getEpisodesMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ShowServiceServer).GetEpisodes(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

// ShowServiceClient calls the show service over a client connection.
type ShowServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewShowServiceClient creates a client for the show service.
func NewShowServiceClient(cc grpc.ClientConnInterface) *ShowServiceClient {
	return &ShowServiceClient{cc: cc}
}

// SearchShows calls ShowService.SearchShows.
func (c *ShowServiceClient) SearchShows(ctx context.Context, query string, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, searchShowsMethod, wrapperspb.String(query), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEpisodes calls ShowService.GetEpisodes.
func (c *ShowServiceClient) GetEpisodes(ctx context.Context, showID int64, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, getEpisodesMethod, wrapperspb.Int64(showID), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
