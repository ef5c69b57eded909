// Package delivery provides the routing target set used by event
// dispatches and update cycles.
//
// A List answers one question for a tree walk: "must this window or
// widget be visited?". It is tree-agnostic; the walker owns traversal
// order and consults the list through EnterWindow/EnterWidget, which
// consume membership so a node visited twice in one pass is only
// delivered once.
//
// Targets arrive through two routes:
//
//   - Resolved inserts (InsertPath, InsertWidget) when the caller already
//     knows the target's tree position.
//   - Deferred searches (SearchWidget, SearchAll) when a notification is
//     raised by id only, for example from another goroutine. Pending
//     searches are resolved exactly once by FulfillSearch, which the
//     walker must call before visiting the first window.
//
// Every insert is filtered through a pluggable Subscribers capability so
// a dispatch never pays tree-walk cost for widgets nobody subscribed to.
package delivery
