// Package gridbag converts designer grid constraints into
// java.awt.GridBagConstraints placements.
//
// [Convert] is a pure function over the children of one container. Besides
// one placement per child it may emit filler placements that carry the size
// a child must not shrink below, so the generated code can attach an empty
// panel with those sizes instead of forcing them onto the child itself.
package gridbag
