// Copyright 2025 Binaek Sarkar
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package constants holds process-wide names that don't belong to any one
// package: environment variable keys and the application identity used in
// logs.
package constants

const (
	// EnvDebug, when set to any value, forces debug logging and attaches
	// extra diagnostic fields to every log line.
	EnvDebug = "DECISIMO_DEBUG"

	// EnvLogLevel selects the slog level: DEBUG, INFO, WARN, ERROR.
	EnvLogLevel = "DECISIMO_LOG_LEVEL"
)

// APPNAME is used to namespace sandbox built-in modules, e.g. "@decisimo/zen".
const APPNAME = "decisimo"
