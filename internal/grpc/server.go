package grpc

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/failsafe-go/failsafe-go/timeout"
	"github.com/rs/zerolog"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/client"
	"github.com/Belphemur/ShowFinder/internal/config"
)

// server implements the ShowServiceServer interface
type server struct {
	client client.Client
	logger zerolog.Logger
}

// NewServer creates a new gRPC server instance
func NewServer(c client.Client) ShowServiceServer {
	return &server{
		client: c,
		logger: config.GetLogger(),
	}
}

// SearchShows implements ShowServiceServer.SearchShows
func (s *server) SearchShows(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	query := strings.TrimSpace(req.GetValue())
	s.logger.Debug().Str("query", query).Msg("SearchShows called")

	if query == "" {
		return nil, toStatus(ctx, apperrors.ErrEmptyQuery, "value")
	}

	shows, err := s.client.SearchShows(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("Failed to search shows")
		return nil, toStatus(ctx, err, "value")
	}

	s.logger.Debug().Int("count", len(shows)).Msg("SearchShows completed")
	return convertShowsToProto(shows), nil
}

// GetEpisodes implements ShowServiceServer.GetEpisodes
func (s *server) GetEpisodes(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.ListValue, error) {
	showID := req.GetValue()
	s.logger.Debug().Int64("show_id", showID).Msg("GetEpisodes called")

	if showID <= 0 || showID > math.MaxInt32 {
		return nil, toStatus(ctx, &apperrors.ErrInvalidShowID{Value: strconv.FormatInt(showID, 10)}, "value")
	}

	episodes, err := s.client.GetEpisodes(ctx, int(showID))
	if err != nil {
		s.logger.Error().Err(err).Int64("show_id", showID).Msg("Failed to get episodes")
		return nil, toStatus(ctx, err, "value")
	}

	s.logger.Debug().Int64("show_id", showID).Int("count", len(episodes)).Msg("GetEpisodes completed")
	return convertEpisodesToProto(episodes), nil
}

// toStatus maps a flow error to a gRPC status. Caller errors carry a
// BadRequest detail naming field.
func toStatus(ctx context.Context, err error, field string) error {
	switch {
	case apperrors.IsCallerError(err):
		st := status.New(codes.InvalidArgument, err.Error())
		detailed, detailErr := st.WithDetails(&errdetails.BadRequest{
			FieldViolations: []*errdetails.BadRequest_FieldViolation{
				{Field: field, Description: err.Error()},
			},
		})
		if detailErr != nil {
			return st.Err()
		}
		return detailed.Err()
	case errors.Is(err, &apperrors.ErrNotFound{}):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, timeout.ErrExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, circuitbreaker.ErrOpen),
		errors.Is(err, &apperrors.ErrUpstreamStatus{}),
		errors.Is(err, &apperrors.ErrMalformedResponse{}):
		apperrors.Report(ctx, err)
		return status.Errorf(codes.Unavailable, "upstream failure: %v", err)
	default:
		apperrors.Report(ctx, err)
		return status.Errorf(codes.Internal, "internal error: %v", err)
	}
}
