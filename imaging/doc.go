// Package imaging assigns deterministic filenames to extracted images
// and optionally writes them to disk, converting formats and resampling
// for a requested DPI.
package imaging
