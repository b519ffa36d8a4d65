// Package pathtag decides whether a catalog folder path already carries its
// external identifiers and appends the missing ones as bracketed tags such as
// "{imdb-tt0133093}" or "{tvdb-81189}".
//
// Matching is a plain substring search against the whole path. That keeps a
// corrected path stable on later runs, at the cost of treating coincidental
// digit runs as a match.
package pathtag
