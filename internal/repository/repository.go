// Package repository handles all interactions with the database.
//
// It contains the SQL queries and methods to fetch, persist, or update
// data, abstracting SQL logic away from the service layer. Database
// routines may raise user errors; those surface here as driver errors
// and are classified further up the stack.
package repository
