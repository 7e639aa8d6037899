package web

import "embed"

// StaticFiles embeds the status page into the binary.
//
//go:embed static/*
var StaticFiles embed.FS
