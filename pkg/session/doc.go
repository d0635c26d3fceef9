/*
Package session implements document session management and persistence
orchestration.

It provides high-level abstractions for handling concurrent access to
funnel documents across multiple editor replicas, integrating local
locking with distributed locking and storage adapters, plus draft
sessions that bound the number of document mutations per user gesture
to exactly one.
*/
package session
