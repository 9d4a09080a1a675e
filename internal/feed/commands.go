// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ManuGH/padmeta/internal/content"
	xglog "github.com/ManuGH/padmeta/internal/log"
	"github.com/ManuGH/padmeta/internal/metrics"
	"github.com/ManuGH/padmeta/internal/telemetry"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ImageStore persists uploads and deletes images released by a slot.
type ImageStore interface {
	Store(data []byte, mime string) (*content.Image, error)
	LoadDefault(path string) (*content.Image, error)
	Remove(img *content.Image) error
}

// Upload is an image received with a command.
type Upload struct {
	Data []byte
	MIME string
}

// TrackInput sets the now-playing track.
type TrackInput struct {
	Item      content.Item
	ExpiresAt *time.Time
	Image     *Upload
}

// ProgramInput sets the current program.
type ProgramInput struct {
	Name      string
	ExpiresAt *time.Time
	Image     *Upload
}

// StationInput replaces the station identity. ImageFile, when set, is
// loaded from disk; a missing file leaves the station without an image.
type StationInput struct {
	Name      string
	Image     *Upload
	ImageFile string
}

// Commands applies content mutations and publishes them immediately.
type Commands struct {
	store  *content.Store
	ticker *Ticker
	images ImageStore
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewCommands binds commands to the store and the ticker that owns the
// outputs.
func NewCommands(store *content.Store, ticker *Ticker, images ImageStore) *Commands {
	return &Commands{
		store:  store,
		ticker: ticker,
		images: images,
		tracer: telemetry.Tracer("github.com/ManuGH/padmeta/internal/feed"),
		logger: xglog.WithComponent("feed.commands"),
	}
}

func normalize(s string) string { return content.NormalizeText(s) }

func validateUpload(u *Upload) error {
	if u == nil {
		return nil
	}
	if len(u.Data) == 0 {
		return fmt.Errorf("%w: empty image", content.ErrValidation)
	}
	_, err := content.ParseImageType(u.MIME)
	return err
}

// SetTrack replaces the track slot.
func (c *Commands) SetTrack(ctx context.Context, in TrackInput) error {
	item := content.Item{Title: normalize(in.Item.Title), Artist: normalize(in.Item.Artist)}
	if item.Title == "" {
		return c.reject(ctx, "set_track", fmt.Errorf("%w: track title is required", content.ErrValidation))
	}
	if err := validateUpload(in.Image); err != nil {
		return c.reject(ctx, "set_track", err)
	}

	return c.apply(ctx, "set_track", in.Image, func(ctx context.Context, st *content.State) error {
		img, err := c.storeUpload(in.Image)
		if err != nil {
			return err
		}
		old := st.Track
		st.Track = &content.Track{ID: uuid.New(), Item: item, ExpiresAt: in.ExpiresAt, Image: img}
		if old != nil {
			c.release(ctx, old.Image)
		}
		c.logger.Info().
			Str(xglog.FieldEvent, "feed.track_set").
			Str(xglog.FieldContentID, st.Track.ID.String()).
			Str(xglog.FieldTitle, item.Title).
			Str(xglog.FieldArtist, item.Artist).
			Str(xglog.FieldExpires, formatExpiry(in.ExpiresAt)).
			Msg("track set")
		return nil
	})
}

// ClearTrack empties the track slot.
func (c *Commands) ClearTrack(ctx context.Context) error {
	return c.apply(ctx, "clear_track", nil, func(ctx context.Context, st *content.State) error {
		if st.Track != nil {
			c.release(ctx, st.Track.Image)
			st.Track = nil
		}
		c.logger.Info().Str(xglog.FieldEvent, "feed.track_cleared").Msg("track cleared")
		return nil
	})
}

// SetProgram replaces the program slot.
func (c *Commands) SetProgram(ctx context.Context, in ProgramInput) error {
	name := normalize(in.Name)
	if name == "" {
		return c.reject(ctx, "set_program", fmt.Errorf("%w: program name is required", content.ErrValidation))
	}
	if err := validateUpload(in.Image); err != nil {
		return c.reject(ctx, "set_program", err)
	}

	return c.apply(ctx, "set_program", in.Image, func(ctx context.Context, st *content.State) error {
		img, err := c.storeUpload(in.Image)
		if err != nil {
			return err
		}
		old := st.Program
		st.Program = &content.Program{ID: uuid.New(), Name: name, ExpiresAt: in.ExpiresAt, Image: img}
		if old != nil {
			c.release(ctx, old.Image)
		}
		c.logger.Info().
			Str(xglog.FieldEvent, "feed.program_set").
			Str(xglog.FieldContentID, st.Program.ID.String()).
			Str(xglog.FieldName, name).
			Str(xglog.FieldExpires, formatExpiry(in.ExpiresAt)).
			Msg("program set")
		return nil
	})
}

// ClearProgram empties the program slot.
func (c *Commands) ClearProgram(ctx context.Context) error {
	return c.apply(ctx, "clear_program", nil, func(ctx context.Context, st *content.State) error {
		if st.Program != nil {
			c.release(ctx, st.Program.Image)
			st.Program = nil
		}
		c.logger.Info().Str(xglog.FieldEvent, "feed.program_cleared").Msg("program cleared")
		return nil
	})
}

// SetStation replaces the station identity.
func (c *Commands) SetStation(ctx context.Context, in StationInput) error {
	name := normalize(in.Name)
	if name == "" {
		return c.reject(ctx, "set_station", fmt.Errorf("%w: station name is required", content.ErrValidation))
	}
	if err := validateUpload(in.Image); err != nil {
		return c.reject(ctx, "set_station", err)
	}

	return c.apply(ctx, "set_station", in.Image, func(ctx context.Context, st *content.State) error {
		img, err := c.storeUpload(in.Image)
		if err != nil {
			return err
		}
		if img == nil && in.ImageFile != "" {
			img, err = c.images.LoadDefault(in.ImageFile)
			switch {
			case errors.Is(err, content.ErrNotFound):
				c.logger.Warn().Err(err).
					Str(xglog.FieldEvent, "feed.station_image_missing").
					Str(xglog.FieldPath, in.ImageFile).
					Msg("station image not found, continuing without image")
				img = nil
			case err != nil:
				return err
			}
		}
		old := st.Station
		st.Station = content.Station{ID: uuid.New(), Name: name, Image: img}
		c.release(ctx, old.Image)
		c.logger.Info().
			Str(xglog.FieldEvent, "feed.station_set").
			Str(xglog.FieldContentID, st.Station.ID.String()).
			Str(xglog.FieldName, name).
			Bool("has_image", img != nil).
			Msg("station set")
		return nil
	})
}

// apply runs mutate and the publish under one store lock. A publish error
// is returned but the mutation is kept.
func (c *Commands) apply(ctx context.Context, command string, upload *Upload, mutate func(context.Context, *content.State) error) error {
	ctx, span := c.tracer.Start(ctx, "feed."+command)
	defer span.End()
	if upload != nil {
		span.SetAttributes(telemetry.UploadAttributes(upload.MIME, len(upload.Data))...)
	}

	err := c.store.Do(func(st *content.State) error {
		if err := mutate(ctx, st); err != nil {
			return err
		}
		if err := c.ticker.publishLocked(ctx, st, TriggerCommand); err != nil {
			return fmt.Errorf("publish: %w", err)
		}
		r := c.ticker.last
		span.SetAttributes(telemetry.ContentAttributes(r.Kind.String(), r.ID.String(), c.ticker.toggle)...)
		return nil
	})
	if err != nil {
		outcome := "failed"
		if errors.Is(err, content.ErrValidation) {
			outcome = "invalid"
		}
		metrics.IncCommand(command, outcome)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(telemetry.ErrorAttributes(outcome)...)
		xglog.FromContext(ctx).Error().Err(err).
			Str(xglog.FieldEvent, "feed.command_failed").
			Str("command", command).
			Msg("command failed")
		return err
	}
	metrics.IncCommand(command, "ok")
	return nil
}

func (c *Commands) reject(ctx context.Context, command string, err error) error {
	metrics.IncCommand(command, "invalid")
	xglog.FromContext(ctx).Warn().Err(err).
		Str(xglog.FieldEvent, "feed.command_rejected").
		Str("command", command).
		Msg("command rejected")
	return err
}

func (c *Commands) storeUpload(u *Upload) (*content.Image, error) {
	if u == nil {
		return nil, nil
	}
	return c.images.Store(u.Data, u.MIME)
}

// release deletes an image that no slot owns anymore. Failures are left to
// the periodic reconciliation.
func (c *Commands) release(ctx context.Context, img *content.Image) {
	if img == nil {
		return
	}
	if err := c.images.Remove(img); err != nil {
		xglog.FromContext(ctx).Warn().Err(err).
			Str(xglog.FieldEvent, "feed.image_release_failed").
			Str(xglog.FieldImagePath, img.Path).
			Msg("failed to delete released image")
	}
}

func formatExpiry(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
