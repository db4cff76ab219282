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

package test

import "testing"

// succeeds classifies v as a success or failure value. the tests in this
// project only ever check booleans and errors, so those are the only
// types handled. a nil interface is a nil error.
func succeeds(t *testing.T, v interface{}) bool {
	t.Helper()

	switch v := v.(type) {
	case bool:
		return v
	case error:
		return v == nil
	case nil:
		return true
	}

	t.Fatalf("unsupported type (%T) for expectation testing", v)
	return false
}

// ExpectedSuccess tests argument v for a success condition: a true bool
// or a nil error.
func ExpectedSuccess(t *testing.T, v interface{}) bool {
	t.Helper()

	if !succeeds(t, v) {
		t.Errorf("expected success (%v)", v)
		return false
	}
	return true
}

// ExpectedFailure tests argument v for a failure condition: a false bool
// or a non-nil error.
func ExpectedFailure(t *testing.T, v interface{}) bool {
	t.Helper()

	if succeeds(t, v) {
		t.Errorf("expected failure (%v)", v)
		return false
	}
	return true
}
