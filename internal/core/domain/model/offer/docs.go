// Package offer provides the Offer aggregate: a timed, exclusive proposal of
// one order to one courier.
//
// The dispatcher issues offers sequentially down a ranked candidate list, so
// for any order at most one offer is Pending at a time. A courier resolves a
// pending offer by accepting or rejecting it before the window lapses; an
// unanswered offer expires. Expiry is lazy: the deadline is an immutable
// timestamp checked on every resolution attempt, and a background sweep marks
// lapsed offers Expired after the fact.
package offer
