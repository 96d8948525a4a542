// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package bufq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip producer/consumer handoff tests, whose
// synchronization goes through atomix operations the detector cannot see.
const RaceEnabled = true
