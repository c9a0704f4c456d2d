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

// EvaluationError is the top-level error returned by a decision graph
// evaluation. It wraps one of LoaderError, NodeError, DepthLimitExceeded or
// NodeConnectError and exposes a stable discriminant Tag for user-visible
// serialization.
type EvaluationError struct {
	Source error
}

func (e EvaluationError) Error() string { return e.Source.Error() }

func (e EvaluationError) Unwrap() error { return e.Source }

// Tag returns a stable discriminant string describing the wrapped error,
// matching the `type` field of the user-visible structured error object.
func (e EvaluationError) Tag() string {
	switch e.Source.(type) {
	case LoaderNotFoundError, LoaderInternalError:
		return "loaderError"
	case NodeError:
		return "nodeError"
	case DepthLimitExceededError:
		return "depthLimitExceeded"
	case NodeConnectError:
		return "nodeConnectError"
	case DecisionGraphValidationError:
		return "validationError"
	default:
		return "error"
	}
}

func ErrEvaluation(source error) error {
	return EvaluationError{Source: source}
}
