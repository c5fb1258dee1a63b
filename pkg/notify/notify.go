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

// Package notify shows short desktop notifications ("toasts").
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog/log"
)

const (
	notificationsService = "org.freedesktop.Notifications"
	notificationsPath    = "/org/freedesktop/Notifications"
	notifyMethod         = notificationsService + ".Notify"

	// AppName is reported to the notification server as the sender.
	AppName = "NonSteamLaunchers"

	DefaultExpiry = 5 * time.Second
)

var ErrClosed = errors.New("notifier is closed")

// caller is the subset of dbus.BusObject used to send notifications.
type caller interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...any) *dbus.Call
}

// DBusNotifier sends notifications to the session's freedesktop
// notification server.
type DBusNotifier struct {
	conn   *dbus.Conn
	obj    caller
	Expiry time.Duration
	Icon   string
}

// NewDBusNotifier connects to the session bus.
func NewDBusNotifier() (*DBusNotifier, error) {
	conn, err := dbus.SessionBusPrivate()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	if err := conn.Auth(nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to authenticate to session bus: %w", err)
	}
	if err := conn.Hello(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to register on session bus: %w", err)
	}

	return &DBusNotifier{
		conn:   conn,
		obj:    conn.Object(notificationsService, notificationsPath),
		Expiry: DefaultExpiry,
	}, nil
}

func newDBusNotifierWithCaller(obj caller) *DBusNotifier {
	return &DBusNotifier{obj: obj, Expiry: DefaultExpiry}
}

// Toast shows a notification with title and body.
func (n *DBusNotifier) Toast(ctx context.Context, title, body string) error {
	if n.obj == nil {
		return ErrClosed
	}

	call := n.obj.CallWithContext(ctx, notifyMethod, 0,
		AppName,
		uint32(0),
		n.Icon,
		title,
		body,
		[]string{},
		map[string]dbus.Variant{},
		int32(n.Expiry/time.Millisecond),
	)
	if call.Err != nil {
		return fmt.Errorf("failed to send notification: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("failed to read notification id: %w", err)
	}
	log.Debug().Uint32("id", id).Str("title", title).Msg("sent notification")
	return nil
}

// Close releases the bus connection.
func (n *DBusNotifier) Close() error {
	n.obj = nil
	if n.conn == nil {
		return nil
	}
	err := n.conn.Close()
	n.conn = nil
	if err != nil {
		return fmt.Errorf("failed to close session bus: %w", err)
	}
	return nil
}

// LogNotifier writes notifications to the log. It is used when no
// notification server is reachable, e.g. in game mode over SSH.
type LogNotifier struct{}

func (LogNotifier) Toast(_ context.Context, title, body string) error {
	log.Info().Str("title", title).Msg(body)
	return nil
}

// Notifier is a notifier that can be closed.
type Notifier interface {
	Toast(ctx context.Context, title, body string) error
	Close() error
}

type logCloser struct {
	LogNotifier
}

func (logCloser) Close() error { return nil }

// New returns a D-Bus notifier, or a log notifier if the session bus is
// not available.
func New() Notifier {
	n, err := NewDBusNotifier()
	if err != nil {
		log.Debug().Err(err).Msg("desktop notifications unavailable, logging instead")
		return logCloser{}
	}
	return n
}
