// Package conversation holds the chat transcript of a single session.
//
// The Store is the only owner of the message list, the pending-response flag
// and the draft input. It never starts timers itself: Submit hands back a
// Ticket and whoever owns the store schedules the reply and later calls
// ReceiveReply with that ticket. Cancelling outstanding tickets voids replies
// that arrive after the owner has gone away.
package conversation
