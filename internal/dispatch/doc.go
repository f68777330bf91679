// Package dispatch relays invocations from UI surfaces to the completion
// endpoint and delivers exactly one reply per invocation.
//
// Every origination path (popup, side panel, context menu, CLI) builds a
// model.Invocation and hands it to Coordinator.Dispatch together with the
// ReplyChannel of the surface that created it. Replies carry the invocation
// ID so a surface with several invocations in flight can match them up.
package dispatch
