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

package xerr

import "fmt"

type LoaderNotFoundError struct{ Key string }

func (e LoaderNotFoundError) Error() string {
	return fmt.Sprintf("decision content not found: %s", e.Key)
}

func ErrLoaderNotFound(key string) error {
	return LoaderNotFoundError{Key: key}
}

type LoaderInternalError struct {
	Key    string
	Source error
}

func (e LoaderInternalError) Error() string {
	return fmt.Sprintf("loader failed for %s: %s", e.Key, e.Source)
}

func (e LoaderInternalError) Unwrap() error { return e.Source }

func ErrLoaderInternal(key string, source error) error {
	return LoaderInternalError{Key: key, Source: source}
}
