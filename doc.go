/*
 * doc.go, part of Molmodsummer.
 *
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

/*
Package chem models molecules as graphs: atoms are nodes with an atomic number,
bonds are pairs of atoms with a bond order.

	**Capabilities**

	Builds molecular graphs from cartesian coordinates, with or without periodic
	boundary conditions (FromGeometry).

	Finds substructures: bonds, bending angles, dihedrals, out of plane motifs,
	tetrahedral centers and rings, optionally only the strong ones (Search).
	The atoms and bonds of a match can be restricted by criteria.

	Adds the missing hydrogens to a molecular graph (AddHydrogens).

	Finds the bonds, and pairs of bonds, that split a molecular graph in two parts
	(BondHalves, BendHalves, DoubleHalves).

	Reads and writes molecular graphs as short strings (Blob, FromBlob). The
	blobio package stores many of them in a (compressed) file.

The graph machinery without atomic numbers or bond orders is in the chemgraph package,
the coordinate matrices and periodic cells in v3.
*/
package chem
