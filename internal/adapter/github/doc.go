// Package github implements the GitHub REST API adapter for check runs and
// issue comments.
//
// The client wraps net/http with the shared retry/backoff and error-mapping
// infrastructure from internal/adapter/rest. It covers exactly the four
// operations the publisher needs: create a check run, and list, create, and
// delete issue comments. Annotation mapping enforces the API's per-request
// annotation cap.
package github
