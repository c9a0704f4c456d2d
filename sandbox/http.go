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

package sandbox

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dop251/goja"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// buildHTTP exposes one callable per HTTP verb. Each takes a single
// options object: {url, headers?, params?, body?, sign?: {key,
// secret}}. sign, when present, adds an HMAC-SHA256 request signature
// header in the IAM-style convention of signing method+path+timestamp.
func buildHTTP(vm *goja.Runtime, state *execState) (*goja.Object, error) {
	ex := vm.NewObject()
	for _, method := range []string{"GET", "POST", "PATCH", "PUT", "DELETE", "HEAD"} {
		method := method
		_ = ex.Set(strings.ToLower(method), func(call goja.FunctionCall) goja.Value {
			return doRequest(vm, state, method, call)
		})
	}
	return ex, nil
}

func doRequest(vm *goja.Runtime, state *execState, method string, call goja.FunctionCall) goja.Value {
	opts, _ := call.Argument(0).Export().(map[string]interface{})
	if opts == nil {
		panic(vm.NewGoError(fmt.Errorf("http.%s requires an options object", strings.ToLower(method))))
	}

	rawURL, _ := opts["url"].(string)
	if rawURL == "" {
		panic(vm.NewGoError(fmt.Errorf("http.%s: options.url is required", strings.ToLower(method))))
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		panic(vm.NewGoError(err))
	}
	if params, ok := opts["params"].(map[string]interface{}); ok {
		q := parsed.Query()
		for k, v := range params {
			q.Set(k, fmt.Sprint(v))
		}
		parsed.RawQuery = q.Encode()
	}

	var bodyBytes []byte
	if body, ok := opts["body"]; ok {
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			panic(vm.NewGoError(err))
		}
	}

	ctx := state.ctx
	req, err := http.NewRequestWithContext(ctx, method, parsed.String(), bytes.NewReader(bodyBytes))
	if err != nil {
		panic(vm.NewGoError(err))
	}
	if len(bodyBytes) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if headers, ok := opts["headers"].(map[string]interface{}); ok {
		for k, v := range headers {
			req.Header.Set(k, fmt.Sprint(v))
		}
	}
	if sign, ok := opts["sign"].(map[string]interface{}); ok {
		signRequest(req, sign, bodyBytes)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		panic(vm.NewGoError(err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		panic(vm.NewGoError(err))
	}

	var parsedBody interface{}
	if json.Unmarshal(respBody, &parsedBody) != nil {
		parsedBody = string(respBody)
	}

	headers := map[string]interface{}{}
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}

	return vm.ToValue(map[string]interface{}{
		"status":  resp.StatusCode,
		"headers": headers,
		"body":    parsedBody,
	})
}

// signRequest adds an "Authorization" header of the form
// "HMAC-SHA256 <key>:<signature>", signing method, path, a unix-second
// timestamp (also sent as X-Timestamp), and the body.
func signRequest(req *http.Request, sign map[string]interface{}, body []byte) {
	key, _ := sign["key"].(string)
	secret, _ := sign["secret"].(string)
	if secret == "" {
		return
	}
	ts := fmt.Sprintf("%d", time.Now().Unix())
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(req.Method))
	mac.Write([]byte(req.URL.Path))
	mac.Write([]byte(ts))
	mac.Write(body)
	sig := hex.EncodeToString(mac.Sum(nil))
	req.Header.Set("X-Timestamp", ts)
	req.Header.Set("Authorization", fmt.Sprintf("HMAC-SHA256 %s:%s", key, sig))
}
