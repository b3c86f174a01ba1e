// Package courier provides the Courier aggregate from the dispatcher's point
// of view: availability (online flag and last reported location), the priority
// score driving candidate ranking, and the daily rejection counter.
//
// Profiles, authentication, and shift management belong to user management.
// The dispatch core reads availability when ranking candidates and writes
// penalty increments when offers are rejected or expire.
package courier
