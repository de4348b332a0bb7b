// Copyright 2015 Google Inc. All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package shlog is a thin pass-through to glog, kept as its own import
// so the rest of the module names its logger "shlog" instead of
// spelling out glog at every call site (matching the teacher's habit of
// calling straight into glog.V()/glog.Infof() throughout eval.go,
// parser.go, worker.go, ... but centralized here as one import point
// since this module spans several packages, unlike the teacher's flat
// single-package layout).
package shlog

import "github.com/golang/glog"

// Level re-exports glog.Level so callers never import glog directly.
type Level = glog.Level

// Verbose re-exports glog.Verbose.
type Verbose = glog.Verbose

// V reports whether verbosity at the requested level is enabled, mirroring
// glog.V.
func V(level Level) Verbose { return glog.V(level) }

// Infof logs an info-level message.
func Infof(format string, args ...interface{}) { glog.Infof(format, args...) }

// Warningf logs a warning-level message.
func Warningf(format string, args ...interface{}) { glog.Warningf(format, args...) }

// Errorf logs an error-level message.
func Errorf(format string, args ...interface{}) { glog.Errorf(format, args...) }

// Flush flushes all pending log I/O; call before process exit, as the
// teacher's main.go does via `defer glog.Flush()`.
func Flush() { glog.Flush() }
