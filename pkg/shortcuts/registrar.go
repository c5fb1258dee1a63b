// NSL Core
// Copyright (c) 2025 The NonSteamLaunchers Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of NSL Core.
//
// NSL Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// NSL Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with NSL Core.  If not, see <http://www.gnu.org/licenses/>.

// Package shortcuts turns game descriptors reported by the installer into
// fully configured non-Steam shortcuts on the host.
package shortcuts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// LaunchOptionsSource selects which launch options string is stored with
// SetLaunchOptions after the shortcut is created.
type LaunchOptionsSource int

const (
	// LaunchOptionsOriginal stores the descriptor's launch options verbatim,
	// including the shim token that was dropped for AddShortcut.
	LaunchOptionsOriginal LaunchOptionsSource = iota
	// LaunchOptionsTail stores the same trimmed value passed to AddShortcut.
	LaunchOptionsTail
)

// Names of the follow-up calls, as reported in CallError.
const (
	CallSetName          = "SetShortcutName"
	CallSetLaunchOptions = "SetLaunchOptions"
	CallSetExe           = "SetShortcutExe"
	CallSetStartDir      = "SetShortcutStartDir"
	CallCompatTool       = "SpecifyCompatTool"
	CallArtwork          = "SetCustomArtwork"
	CallAddTag           = "AddUserTag"
)

// Options tunes a Registrar. The zero value matches the host's historic
// behavior: no timeouts, sequential batches, success toasts only.
type Options struct {
	// CallTimeout bounds each individual host call. Zero means no limit.
	CallTimeout time.Duration
	// Concurrency is the number of descriptors RegisterAll works on at once.
	Concurrency int
	// LaunchOptions picks the value given to SetLaunchOptions.
	LaunchOptions LaunchOptionsSource
	// Quiet disables the success toast.
	Quiet bool
	// NotifyFailures also toasts when a descriptor could not be registered.
	NotifyFailures bool
}

// CallError records a single failed follow-up call.
type CallError struct {
	Err  error
	Call string
	Slot string
}

func (e *CallError) Error() string {
	if e.Slot != "" {
		return fmt.Sprintf("%s(%s): %v", e.Call, e.Slot, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Call, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// Result describes a successful registration.
type Result struct {
	// FollowUp aggregates the follow-up calls that failed. Nil when every
	// call succeeded.
	FollowUp   error
	ExePath    string
	StartDir   string
	LaunchTail string
	AppID      uint32
}

// Partial reports whether the shortcut exists but some metadata could not
// be applied.
func (r Result) Partial() bool {
	return r.FollowUp != nil
}

// FailedCalls lists the follow-up calls that failed.
func (r Result) FailedCalls() []*CallError {
	var merr *multierror.Error
	if !errors.As(r.FollowUp, &merr) {
		return nil
	}
	calls := make([]*CallError, 0, len(merr.Errors))
	for _, err := range merr.Errors {
		var ce *CallError
		if errors.As(err, &ce) {
			calls = append(calls, ce)
		}
	}
	return calls
}

// Outcome is the result of one descriptor in a batch.
type Outcome struct {
	Err        error
	Descriptor GameDescriptor
	Result     Result
}

// Registrar registers shortcuts with a Host.
type Registrar struct {
	host     Host
	notifier Notifier
	opts     Options
}

// NewRegistrar returns a Registrar. notifier may be nil.
func NewRegistrar(host Host, notifier Notifier, opts Options) *Registrar {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Registrar{
		host:     host,
		notifier: notifier,
		opts:     opts,
	}
}

func (r *Registrar) call(ctx context.Context, fn func(context.Context) error) error {
	if r.opts.CallTimeout <= 0 {
		return fn(ctx)
	}
	callCtx, cancel := context.WithTimeout(ctx, r.opts.CallTimeout)
	defer cancel()
	return fn(callCtx)
}

// Register creates a shortcut for d and applies its metadata. An error is
// returned only when no shortcut was created: ErrMalformedInput when d is
// unusable, ErrHostRegistrationFailed when the host assigned no app ID.
// Follow-up failures are reported through Result.FollowUp.
func (r *Registrar) Register(ctx context.Context, d GameDescriptor) (Result, error) {
	if err := d.Validate(); err != nil {
		log.Error().Err(err).Str("appName", d.AppName).Msg("rejected game descriptor")
		r.toastFailure(ctx, d)
		return Result{}, err
	}

	exePath, err := ParseExe(d.Exe)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		ExePath:    exePath,
		StartDir:   NormalizeStartDir(d.StartDir),
		LaunchTail: LaunchTail(d.LaunchOptions),
	}

	log.Info().Msgf("creating shortcut %s", d.AppName)
	log.Debug().
		Str("appName", d.AppName).
		Str("exe", d.Exe).
		Str("startDir", res.StartDir).
		Str("launchOptions", res.LaunchTail).
		Msg("game details")

	var appID uint32
	err = r.call(ctx, func(ctx context.Context) error {
		var addErr error
		appID, addErr = r.host.AddShortcut(ctx, d.AppName, d.Exe, res.StartDir, res.LaunchTail)
		return addErr
	})
	if err != nil || appID == 0 {
		log.Error().Err(err).Msgf("failed to create shortcut for %s", d.AppName)
		r.toastFailure(ctx, d)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %s: %w", ErrHostRegistrationFailed, d.AppName, err)
		}
		return Result{}, fmt.Errorf("%w: %s", ErrHostRegistrationFailed, d.AppName)
	}

	res.AppID = appID
	log.Info().Uint32("appID", appID).Msgf("app ID for %s", d.AppName)
	r.toast(ctx, "New Shortcut Created", d.AppName+" has been added to your library!")

	res.FollowUp = r.applyMetadata(ctx, appID, &d, res.LaunchTail)
	if res.FollowUp != nil {
		log.Warn().Err(res.FollowUp).Uint32("appID", appID).
			Msgf("shortcut for %s created with incomplete metadata", d.AppName)
	}

	return res, nil
}

func (r *Registrar) applyMetadata(ctx context.Context, appID uint32, d *GameDescriptor, tail string) error {
	var merr *multierror.Error
	record := func(call, slot string, err error) {
		if err == nil {
			return
		}
		ce := &CallError{Call: call, Slot: slot, Err: err}
		log.Error().Err(err).Uint32("appID", appID).Str("call", call).Str("slot", slot).
			Msg("shortcut follow-up call failed")
		merr = multierror.Append(merr, ce)
	}

	record(CallSetName, "", r.call(ctx, func(ctx context.Context) error {
		return r.host.SetShortcutName(ctx, appID, d.AppName)
	}))

	launchOptions := d.LaunchOptions
	if r.opts.LaunchOptions == LaunchOptionsTail {
		launchOptions = tail
	}
	record(CallSetLaunchOptions, "", r.call(ctx, func(ctx context.Context) error {
		return r.host.SetLaunchOptions(ctx, appID, launchOptions)
	}))

	record(CallSetExe, "", r.call(ctx, func(ctx context.Context) error {
		return r.host.SetShortcutExe(ctx, appID, d.Exe)
	}))

	record(CallSetStartDir, "", r.call(ctx, func(ctx context.Context) error {
		return r.host.SetShortcutStartDir(ctx, appID, d.StartDir)
	}))

	if d.CompatTool.Set() {
		record(CallCompatTool, "", r.call(ctx, func(ctx context.Context) error {
			return r.host.SpecifyCompatTool(ctx, appID, string(d.CompatTool))
		}))
	}

	// empty paths are sent too; the host treats them as a no-op
	for _, art := range d.Artwork() {
		record(CallArtwork, art.Slot.String(), r.call(ctx, func(ctx context.Context) error {
			return r.host.SetCustomArtwork(ctx, appID, art.Path, ArtworkFormat, art.Slot)
		}))
	}

	record(CallAddTag, "", r.call(ctx, func(ctx context.Context) error {
		return r.host.AddUserTag(ctx, []uint32{appID}, ProvenanceTag)
	}))

	return merr.ErrorOrNil()
}

// RegisterAll registers every descriptor. A failing descriptor never stops
// the others. Outcomes are returned in input order.
func (r *Registrar) RegisterAll(ctx context.Context, ds []GameDescriptor) []Outcome {
	outcomes := make([]Outcome, len(ds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)
	for i := range ds {
		g.Go(func() error {
			res, err := r.Register(gctx, ds[i])
			outcomes[i] = Outcome{Descriptor: ds[i], Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (r *Registrar) toast(ctx context.Context, title, body string) {
	if r.notifier == nil || r.opts.Quiet {
		return
	}
	if err := r.notifier.Toast(ctx, title, body); err != nil {
		log.Warn().Err(err).Msg("failed to show notification")
	}
}

func (r *Registrar) toastFailure(ctx context.Context, d GameDescriptor) {
	if !r.opts.NotifyFailures {
		return
	}
	r.toast(ctx, "Shortcut Not Created", "Failed to add "+d.AppName+" to your library")
}
