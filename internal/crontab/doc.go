// Package crontab reads and writes a user's cron table.
//
// A Tab is a parsed view of one crontab acquired from a Store. Entries are
// located by their trailing comment, and every mutating call on a Tab flushes
// the whole table back to the Store. Lines that are not entries (comments,
// environment assignments, blank lines) are kept verbatim.
package crontab
