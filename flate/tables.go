package flate

const (
	maxCodeLen = 15 // longest Huffman code DEFLATE allows

	// Alphabet sizes from RFC 1951 section 3.2.7. The literal/length
	// alphabet has 288 slots but only 286 are ever used in a valid stream;
	// likewise distance codes 30 and 31 never occur (section 3.2.5).
	maxNumLit  = 286
	maxNumDist = 30
	numMeta    = 19 // the code length alphabet that describes the other two

	endOfBlock = 256
)

// metaCodeOrder is the fixed, non-sequential order in which a dynamic
// block's header stores the code length alphabet's own code lengths
// (RFC 1951 section 3.2.7).
var metaCodeOrder = [numMeta]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// lengthBase and lengthExtra map a length code minus 257 to the base match
// length and the number of extra bits that follow the code (RFC 1951
// section 3.2.5). Code 285 does not follow the progression of the rest of
// the table: it encodes the maximum length 258 with no extra bits, even
// though 284 plus its 5 extra bits could already reach it.
var lengthBase = [29]uint16{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13,
	15, 17, 19, 23, 27, 31, 35, 43, 51, 59,
	67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lengthExtra = [29]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1,
	1, 1, 2, 2, 2, 2, 3, 3, 3, 3,
	4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// distBase and distExtra map a distance code to the base distance and its
// extra bit count.
var distBase = [30]uint16{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25,
	33, 49, 65, 97, 129, 193, 257, 385, 513, 769,
	1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577,
}

var distExtra = [30]uint8{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3,
	4, 4, 5, 5, 6, 6, 7, 7, 8, 8,
	9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
}
