// Package tonemap converts linear-light HDR pixels into displayable LDR images.
//
// It provides a small float32 color algebra, a fixed set of published tonemapping
// operators (Reinhard variants, Hable filmic, ACES fitted and approximated), camera
// response curve interpolation, and a batch driver that decodes Radiance RGBE,
// OpenEXR or TIFF input and writes one JPEG/PNG output per operator.
package tonemap
