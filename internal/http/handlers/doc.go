// Package handlers translates HTTP requests into banner renders and icon listings.
package handlers
