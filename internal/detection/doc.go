// Package detection implements the vessel analysis tasks behind the command API.
//
// Two tasks are provided, each behind a small interface so the HTTP layer can
// be tested with fakes:
//
//   - Counter (ThermalCounter): counts unmanned surface vessels in a thermal image
//   - Identifier (VisibleIdentifier): labels and boxes vessels in a visible-light image
//
// Neither task is a trained detector. ThermalCounter feeds a 28×28 grayscale
// rendition of the image through an untrained two-layer perceptron and rounds
// the magnitude of its output. VisibleIdentifier decodes the image and then
// synthesises zero to two detections with plausible boxes and confidences in
// [0.85, 0.99].
//
// # Errors
//
// Both tasks return errors wrapping imaging.ErrNotFound when the path is
// missing and imaging.ErrDecode when the file is not an image. Any other
// error is unexpected.
//
// # Coordinate System
//
// Boxes are [x1, y1, x2, y2] in pixels with the origin at the top-left
// corner, x2 > x1 and y2 > y1.
package detection
