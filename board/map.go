// Package board implements the concrete Risk rules engine: the static map
// of territories and continents, the card deck and trade-in ladder, combat
// resolution, and the GameState that satisfies search.RiskState so the
// search core and evaluator can operate on it. Grounded on the teacher's
// game/map.go (canton/adjacency tables as package-level static data) and
// game/state.go, generalized from a 26-canton Swiss map with no continent
// bonuses to the standard 42-territory, 6-continent Risk board that
// game/state.go's dangling gs.Map.Regions references implied but never
// defined.
package board

// Territory is one of the board's 42 fixed regions.
type Territory struct {
	ID          int
	Name        string
	ContinentID int
	Neighbors   []int
}

// Continent groups territories under a troop bonus awarded to whoever owns
// every member (spec §4.1's continentScore sub-metric).
type Continent struct {
	ID      int
	Name    string
	Bonus   int
	Members []int
}

// Map is the static board topology, shared read-only across every
// GameState derived from it.
type Map struct {
	Territories []Territory
	Continents  []Continent
}

// TerritoryIDs returns every territory id in a stable order.
func (m *Map) TerritoryIDs() []int {
	ids := make([]int, len(m.Territories))
	for i := range m.Territories {
		ids[i] = i
	}
	return ids
}

// ContinentIDs returns every continent id in a stable order.
func (m *Map) ContinentIDs() []int {
	ids := make([]int, len(m.Continents))
	for i := range m.Continents {
		ids[i] = i
	}
	return ids
}

func (m *Map) Neighbors(territoryID int) []int {
	return m.Territories[territoryID].Neighbors
}

func (m *Map) ContinentOf(territoryID int) int {
	return m.Territories[territoryID].ContinentID
}

func (m *Map) ContinentBonus(continentID int) int {
	return m.Continents[continentID].Bonus
}

func (m *Map) ContinentMembers(continentID int) []int {
	return m.Continents[continentID].Members
}

func (m *Map) AreAdjacent(a, b int) bool {
	for _, n := range m.Territories[a].Neighbors {
		if n == b {
			return true
		}
	}
	return false
}

// territoryNames/continentNames/adjacency mirror the teacher's global
// table layout (cantonAbbreviations/cantonNames/adjacencyData in
// game/map.go), scaled up to the standard Risk board.
var continentNames = []string{
	"North America", "South America", "Europe", "Africa", "Asia", "Australia",
}

var continentBonuses = []int{5, 2, 5, 3, 7, 2}

var territoryNames = []string{
	"Alaska", "Northwest Territory", "Greenland", "Alberta", "Ontario", "Quebec",
	"Western United States", "Eastern United States", "Central America",
	"Venezuela", "Brazil", "Peru", "Argentina",
	"Iceland", "Great Britain", "Scandinavia", "Northern Europe", "Western Europe",
	"Southern Europe", "Ukraine",
	"North Africa", "Egypt", "East Africa", "Congo", "South Africa", "Madagascar",
	"Ural", "Siberia", "Yakutsk", "Kamchatka", "Irkutsk", "Mongolia", "Japan",
	"Afghanistan", "China", "Middle East", "India", "Siam",
	"Indonesia", "New Guinea", "Western Australia", "Eastern Australia",
}

// territoryContinent maps each territory index to its continent index,
// matching the ordering of territoryNames above.
var territoryContinent = buildContinentIndex([][]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8},     // North America
	{9, 10, 11, 12},                 // South America
	{13, 14, 15, 16, 17, 18, 19},     // Europe
	{20, 21, 22, 23, 24, 25},         // Africa
	{26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36, 37}, // Asia
	{38, 39, 40, 41},                 // Australia
})

func buildContinentIndex(members [][]int) []int {
	index := make([]int, len(territoryNames))
	for continentID, ids := range members {
		for _, id := range ids {
			index[id] = continentID
		}
	}
	return index
}

var continentMembers = [][]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8},
	{9, 10, 11, 12},
	{13, 14, 15, 16, 17, 18, 19},
	{20, 21, 22, 23, 24, 25},
	{26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36, 37},
	{38, 39, 40, 41},
}

// adjacency is undirected; each entry is added to both sides by NewStandardMap.
var adjacency = [][2]int{
	{0, 1}, {0, 3}, {0, 29},
	{1, 3}, {1, 4}, {1, 2},
	{2, 4}, {2, 5}, {2, 13},
	{3, 4}, {3, 6},
	{4, 5}, {4, 6}, {4, 7},
	{5, 7},
	{6, 7}, {6, 8},
	{7, 8},
	{8, 9},
	{9, 10}, {9, 11},
	{10, 11}, {10, 12}, {10, 20},
	{11, 12},
	{13, 14}, {13, 15},
	{14, 15}, {14, 16}, {14, 17},
	{15, 16}, {15, 19},
	{16, 17}, {16, 18}, {16, 19},
	{17, 18}, {17, 20},
	{18, 19}, {18, 20}, {18, 21}, {18, 35},
	{19, 26}, {19, 33}, {19, 35},
	{20, 17}, {20, 21}, {20, 22},
	{21, 18}, {21, 22}, {21, 35},
	{22, 21}, {22, 23}, {22, 24}, {22, 25}, {22, 35},
	{23, 24},
	{24, 25},
	{26, 27}, {26, 33}, {26, 34},
	{27, 28}, {27, 30}, {27, 31}, {27, 34},
	{28, 29}, {28, 30},
	{29, 30}, {29, 31}, {29, 32}, {29, 0},
	{30, 31},
	{31, 32}, {31, 34},
	{32, 33}, {32, 34},
	{33, 34}, {33, 35}, {33, 36},
	{34, 36}, {34, 37},
	{35, 21}, {35, 36},
	{36, 37},
	{37, 38},
	{38, 39}, {38, 40},
	{39, 40}, {39, 41},
	{40, 41},
}

// NewStandardMap builds the classic 42-territory, 6-continent Risk board.
func NewStandardMap() *Map {
	m := &Map{
		Territories: make([]Territory, len(territoryNames)),
		Continents:  make([]Continent, len(continentNames)),
	}
	for id, name := range territoryNames {
		m.Territories[id] = Territory{
			ID:          id,
			Name:        name,
			ContinentID: territoryContinent[id],
		}
	}
	for id, name := range continentNames {
		m.Continents[id] = Continent{
			ID:      id,
			Name:    name,
			Bonus:   continentBonuses[id],
			Members: continentMembers[id],
		}
	}
	for _, edge := range adjacency {
		a, b := edge[0], edge[1]
		m.Territories[a].Neighbors = appendUnique(m.Territories[a].Neighbors, b)
		m.Territories[b].Neighbors = appendUnique(m.Territories[b].Neighbors, a)
	}
	return m
}

func appendUnique(ids []int, id int) []int {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
