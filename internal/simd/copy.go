package simd

// RepeatCopy replays a back-reference: it copies length bytes from
// dst[pos-offset:] to dst[pos:], where the source and destination
// regions may overlap (offset < length), which is exactly the case a
// literal copy() cannot express. When they don't overlap it is one
// copy(); when they do, it replays one period (offset bytes) at a
// time — each chunk only ever reads bytes already written by an
// earlier chunk or present before pos, so it stays correct regardless
// of how small offset is relative to length.
func RepeatCopy(dst []byte, pos, offset, length int) {
	src := pos - offset
	if offset >= length {
		copy(dst[pos:pos+length], dst[src:src+length])
		return
	}

	for done := 0; done < length; {
		n := offset
		if done+n > length {
			n = length - done
		}
		copy(dst[pos+done:pos+done+n], dst[src+done:src+done+n])
		done += n
	}
}
