/*
Package overlay translates CSS-like box directives from floating widgets
into absolute screen rectangles for hit testing.

Fixed-position widgets declare their geometry with the same vocabulary a
stylesheet would use: top/left/right/bottom offsets and width/height in
pixels or viewport units. Resolve turns one such directive set into a
rectangle inside the container bounds, and Tracker suppresses republishes
when successive rectangles differ by no more than one unit per field.
*/
package overlay
