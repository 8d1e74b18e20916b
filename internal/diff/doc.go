// Package diff walks a concrete HTTP interaction against a projected spec
// (internal/endpoint + internal/shape) and reports where it matches and
// where it doesn't.
//
// # Pipeline
//
// Run drives four stages in fixed order: Path, QueryParameters, RequestBody,
// ResponseBody. Each stage appends to a shared VisitorResults buffer that is
// per-interaction, per-call state — never shared or reused across calls.
//
//  1. Path resolves the interaction's URL against the endpoint projection's
//     path tree. If it doesn't resolve to any known template, a single
//     UnmatchedRequestUrl is emitted and the remaining stages are skipped:
//     there's no path to check query params or bodies against.
//  2. QueryParameters compares the interaction's query string against the
//     (path, method) pair's declared QueryParameters descriptor.
//  3. RequestBody and 4. ResponseBody each visit every candidate
//     Request/Response descriptor for the (path, method) pair (there is
//     ordinarily one; ResponseBody only visits responses whose status code
//     equals the interaction's), tracking matched content types in a set, then emit a
//     single Unmatched summary in end() only if nothing matched across all
//     visits.
//
// Diff emission order follows visit order, and that ordering is part of the
// package's contract: tests assert on it directly.
package diff
