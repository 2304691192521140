// Package schedule manages the cron entry that runs a watcher.
//
// A Watcher owns at most one entry in a crontab, tagged with the comment
// "watchme-<name>" and running "watchme run <name>". The package validates
// the five time fields before writing and computes upcoming run times for
// scheduled entries.
package schedule
