// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// clock is a sample plugin that reports the current time. Build it with:
//
//	go build -buildmode=plugin -o app/plugins/clock.so ./plugins/clock
package main

import "time"

// clockCommand formats the current local time.
type clockCommand struct{}

func (clockCommand) Execute() (string, error) {
	return time.Now().Format(time.RFC1123), nil
}

// Commands is the entry point the host looks up after plugin.Open.
func Commands() []any {
	return []any{clockCommand{}}
}

func main() {}
