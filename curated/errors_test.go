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

package curated_test

import (
	"errors"
	"testing"

	"github.com/DavidCEllis/DarkSouls-TAS/curated"
	"github.com/DavidCEllis/DarkSouls-TAS/test"
)

func TestPatternMatching(t *testing.T) {
	const pattern = "connection: %v"

	e := curated.Errorf(pattern, "window not found")
	test.ExpectedSuccess(t, curated.IsAny(e))
	test.ExpectedSuccess(t, curated.Is(e, pattern))
	test.ExpectedFailure(t, curated.Is(e, "some other pattern"))

	// a plain error is not curated
	p := errors.New("plain")
	test.ExpectedFailure(t, curated.IsAny(p))
	test.ExpectedFailure(t, curated.Is(p, pattern))
}

func TestChainSearch(t *testing.T) {
	const inner = "inner: %s"
	const outer = "outer: %v"

	e := curated.Errorf(inner, "detail")
	f := curated.Errorf(outer, e)

	// Is() does not look into the chain, Has() does
	test.ExpectedFailure(t, curated.Is(f, inner))
	test.ExpectedSuccess(t, curated.Has(f, inner))
	test.ExpectedSuccess(t, curated.Has(f, outer))

	// nil never matches
	test.ExpectedFailure(t, curated.Has(nil, inner))
	test.ExpectedFailure(t, curated.Is(nil, inner))
	test.ExpectedFailure(t, curated.IsAny(nil))
}

func TestNormalisation(t *testing.T) {
	// adjacent duplicate parts are removed from the message
	e := curated.Errorf("engine: %v", curated.Errorf("engine: %v", "no frame tick"))
	test.Equate(t, e.Error(), "engine: no frame tick")

	// non-duplicate parts are preserved
	f := curated.Errorf("engine: %v", curated.Errorf("hook: %v", "lost connection"))
	test.Equate(t, f.Error(), "engine: hook: lost connection")
}
