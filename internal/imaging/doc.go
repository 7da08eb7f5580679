// Package imaging loads images from disk and prepares them for inference.
//
// # Loading
//
// Load decodes PNG, JPEG, and GIF files. It distinguishes two failure modes
// that the API reports with different codes:
//
//   - ErrNotFound: the path does not exist or the process cannot open it
//   - ErrDecode: the file exists but is not a decodable image
//
// Both are returned wrapped; test with errors.Is.
//
// # Preprocessing
//
// ThermalTensor turns a decoded image into the flat float vector consumed by
// the thermal counting network: BT.601 grayscale (bild), bilinear resize to a
// square (disintegration/imaging), row-major flattening scaled to [0,1].
//
// # Thread Safety
//
// All functions are stateless and safe for concurrent use. No decoded image
// outlives the call that produced it.
package imaging
