package common

// TileSize is the edge length of a level tile in pixels.
const TileSize = 32
