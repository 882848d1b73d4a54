// Package processor ties the command line to the rest of the program. It
// builds the word catalog, the audio stack and the speaker from the parsed
// flags, and then either runs one of the maintenance actions (listing
// themes, clearing or prefetching the audio cache) or launches the GUI.
package processor
