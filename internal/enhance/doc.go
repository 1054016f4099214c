// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

/*
Package enhance adds an optional text-generation summary to custom
questions.

Only aggregated statistics leave the process: top topic names and counts,
top contributor usernames and counts, engagement averages and the local
insights. Raw trees and message content never do.

Two providers implement Summarizer:

  - HTTPProvider: POST {question, context} to a JSON service answering
    {success, text | error}
  - GeminiProvider: Google Gemini through google.golang.org/genai

Adapter bounds the question, the context and the response, applies a
timeout, and runs every call through a circuit breaker. Enhance never
fails: on any error it logs and returns the local result unchanged.
*/
package enhance
