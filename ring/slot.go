// {{{ Copyright (c) Paul R. Tagliamonte <paultag@gmail.com> 2020-2021
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE. }}}

package ring

import "go.shm.dev/framering/region"

// publishSlot returns the slot a writer should claim for the next
// frame, given the frame count observed before incrementing it.
func publishSlot(frameCount uint64) int {
	return int((frameCount + 1) % region.SlotCount)
}

// targetFrameUID returns the uid a consumer should wait for next, given
// the uid of the last frame it read (0 if it has read nothing yet) and
// the newest uid currently published.
//
// While the region is still warming up (fewer frames published than
// there are slots), the only sensible target is last+1: nothing older
// has ever existed. Once the region has wrapped at least once, a slow
// consumer that is more than SlotCount frames behind has already lost
// the frames in between to overwrites, so it must jump forward to the
// oldest frame still actually held: newest-SlotCount+1.
func targetFrameUID(last, newest uint64) uint64 {
	if newest < region.SlotCount {
		return last + 1
	}
	floor := newest - region.SlotCount + 1
	if last+1 > floor {
		return last + 1
	}
	return floor
}

// slotForUID returns the slot index a given frame uid lives in.
func slotForUID(uid uint64) int {
	return int(uid % region.SlotCount)
}

// vim: foldmethod=marker
