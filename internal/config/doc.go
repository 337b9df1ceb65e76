// Package config provides configuration structures and utilities for seoaudit.
// It defines the input, analysis and report options, and loads the optional
// .seoaudit YAML file.
package config
