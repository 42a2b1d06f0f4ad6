package grpc

import (
	"github.com/samber/lo"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Belphemur/ShowFinder/internal/models"
)

// convertShowToProto converts a models.ShowSummary to a struct value
func convertShowToProto(show models.ShowSummary) *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{
		Fields: map[string]*structpb.Value{
			"id":      structpb.NewNumberValue(float64(show.ID)),
			"name":    structpb.NewStringValue(show.Name),
			"summary": structpb.NewStringValue(show.Summary),
			"image":   structpb.NewStringValue(show.Image),
		},
	})
}

// convertShowFromProto converts a struct value back to a models.ShowSummary
func convertShowFromProto(v *structpb.Value) models.ShowSummary {
	fields := v.GetStructValue().GetFields()
	return models.ShowSummary{
		ID:      int(fields["id"].GetNumberValue()),
		Name:    fields["name"].GetStringValue(),
		Summary: fields["summary"].GetStringValue(),
		Image:   fields["image"].GetStringValue(),
	}
}

// convertEpisodeToProto converts a models.EpisodeSummary to a struct value
func convertEpisodeToProto(ep models.EpisodeSummary) *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{
		Fields: map[string]*structpb.Value{
			"id":     structpb.NewNumberValue(float64(ep.ID)),
			"name":   structpb.NewStringValue(ep.Name),
			"season": structpb.NewNumberValue(float64(ep.Season)),
			"number": structpb.NewNumberValue(float64(ep.Number)),
		},
	})
}

// convertEpisodeFromProto converts a struct value back to a models.EpisodeSummary
func convertEpisodeFromProto(v *structpb.Value) models.EpisodeSummary {
	fields := v.GetStructValue().GetFields()
	return models.EpisodeSummary{
		ID:     int(fields["id"].GetNumberValue()),
		Name:   fields["name"].GetStringValue(),
		Season: int(fields["season"].GetNumberValue()),
		Number: int(fields["number"].GetNumberValue()),
	}
}

func convertShowsToProto(shows []models.ShowSummary) *structpb.ListValue {
	return &structpb.ListValue{Values: lo.Map(shows, func(s models.ShowSummary, _ int) *structpb.Value {
		return convertShowToProto(s)
	})}
}

func convertEpisodesToProto(episodes []models.EpisodeSummary) *structpb.ListValue {
	return &structpb.ListValue{Values: lo.Map(episodes, func(e models.EpisodeSummary, _ int) *structpb.Value {
		return convertEpisodeToProto(e)
	})}
}

// ShowsFromProto decodes a SearchShows response.
func ShowsFromProto(list *structpb.ListValue) []models.ShowSummary {
	return lo.Map(list.GetValues(), func(v *structpb.Value, _ int) models.ShowSummary {
		return convertShowFromProto(v)
	})
}

// EpisodesFromProto decodes a GetEpisodes response.
func EpisodesFromProto(list *structpb.ListValue) []models.EpisodeSummary {
	return lo.Map(list.GetValues(), func(v *structpb.Value, _ int) models.EpisodeSummary {
		return convertEpisodeFromProto(v)
	})
}
