// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// greet is a sample plugin. Build it with:
//
//	go build -buildmode=plugin -o app/plugins/greet.so ./plugins/greet
//
// The host binds every command a plugin exports under the plugin's file
// name, so this one is dispatched as "greet".
package main

// greetCommand returns a fixed greeting.
type greetCommand struct{}

func (greetCommand) Execute() (string, error) {
	return "hello", nil
}

// Commands is the entry point the host looks up after plugin.Open.
func Commands() []any {
	return []any{greetCommand{}}
}

func main() {}
