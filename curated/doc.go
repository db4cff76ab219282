// This file is part of DarkSouls-TAS.
//
// DarkSouls-TAS is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// DarkSouls-TAS is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with DarkSouls-TAS.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. It takes a
// formatting pattern and placeholder values, like Errorf() in the fmt
// package, and returns an error.
//
// The pattern is what differentiates one curated error from another. The
// Is() function checks whether an error was created with a specific pattern
// and the Has() function checks whether the pattern occurs anywhere in the
// error chain.
//
//	e := curated.Errorf("hook: %v", someError)
//
//	if curated.Has(e, "hook: %v") {
//		...
//	}
//
// Sentinel patterns should be stored as const strings, suitably named and
// commented, in the package that creates them. For example, the error
// categories used across this project (hook.AttachmentError,
// hook.ConnectivityLost, controller.InvalidOperand and so on) are all
// curated patterns.
//
// The Error() function implementation for curated errors normalises the
// error chain so that it does not contain duplicate adjacent parts. Parts
// are the sub-strings separated by ': '. The practical result is that
// wrapping an error in the same prefix twice produces a readable message
// rather than a stuttering one.
package curated
