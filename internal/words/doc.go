// Package words holds the sight-word vocabulary: individual words with
// their click counters, ordered word sets, and the named themes a player
// can switch between.
package words
