// Package quiz implements the "guess the spoken word" game: target
// selection with recent-word avoidance, difficulty-based distractor
// hiding, answer checking and the timed feedback that follows it.
//
// The engine is single-threaded. Every exported method and every
// deferred callback must run on the UI event loop; the Scheduler given to
// New is responsible for delivering callbacks there.
package quiz
