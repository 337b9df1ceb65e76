// Package loader reads delimited text files into a header and raw rows.
//
// Supported delimiters are comma, tab, semicolon and pipe. A UTF-8 byte
// order mark on the first header cell is removed. Ragged rows are accepted.
package loader
