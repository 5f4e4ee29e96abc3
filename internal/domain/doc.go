// Package domain contains the core concepts of the banner service.
// Keep this package free of transport (HTTP) and infrastructure (filesystem) concerns.
package domain
