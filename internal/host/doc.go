// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package host provides the HTTP client the overlay uses to call back into
// the embedding host application.
//
// The host exposes one endpoint per event at https://{resource}/{EVENT},
// where {resource} is the name of the resource that owns the overlay. The
// resource name is supplied at runtime (config or flag), never compiled in.
//
// # Events
//
//   - CLOSE_UI: the overlay was dismissed. Body {}, response ignored.
//   - TEST_CB:  round-trip test. Body is a JSON string, the plain-text
//     response is returned verbatim.
//
// # Usage
//
//	client := host.NewClient(&host.Config{ResourceName: "sheen-terminal"})
//	defer client.Close()
//
//	reply, err := client.TestCallback(ctx, "ping")
//	if err != nil {
//	    // render "Failed: ..." in the transcript
//	}
//
// Calls are rate limited per client. Nothing is retried.
package host
