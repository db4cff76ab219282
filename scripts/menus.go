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

package scripts

import (
	"github.com/DavidCEllis/DarkSouls-TAS/controller"
)

// Joy performs the Joy gesture from a clean menu state: open the start
// menu, select the gesture panel, pick Joy and confirm. The frame counts
// are tuned to the menu transition animations at 30fps.
func Joy() controller.KeySequence {
	return controller.Seq(
		Start, WaitFor(5),
		Left, Wait, A, WaitFor(5),
		Down, Wait, Right, Wait,
		A, WaitFor(2),
		Start,
	)
}
