// Package wiring pulls in every package that registers a Graft node, so a
// single blank import hands main the whole component graph.
package wiring

import (
	_ "github.com/lumenlang/lumen/internal/adapters/config"
	_ "github.com/lumenlang/lumen/internal/adapters/fs"
	_ "github.com/lumenlang/lumen/internal/adapters/logger"
	_ "github.com/lumenlang/lumen/internal/app"
)
