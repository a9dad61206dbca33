// Package linedist provides a static spatial index over 2D line segments.
//
// A Distancer answers "every crossing of a query segment with the indexed
// segments, ordered by distance from the query start". Each crossing carries
// the index of the indexed segment so callers can resolve it back to the
// segment and whatever metadata their segment type carries.
//
// Distancers are immutable once built and safe for concurrent queries.
package linedist
