// Package score persists the high score in highscore.dat.
//
// New files hold a 0x01 flag byte followed by the zstd-compressed decimal
// score. Files without the flag are read as the older base64 format.
package score
