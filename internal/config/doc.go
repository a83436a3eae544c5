// Package config provides configuration structures and utilities for obsreport.
// It defines the output format defaults, input and output locations, render
// history settings, and the optional .obsreport configuration file.
package config
