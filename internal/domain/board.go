package domain

import (
	"fmt"
	"strings"
)

// Board is the 6x7 grid. Row 0 is the top row, row Rows-1 the bottom one.
// It is a plain array so assigning a Board copies it.
type Board [Rows][Columns]Mark

func NewBoard() Board {
	return Board{}
}

// IsLegal reports whether a disk can still be dropped into column.
func (b *Board) IsLegal(column int) bool {
	if column < 0 || column >= Columns {
		return false
	}

	// only the top cell needs checking, disks never float
	return b[0][column] == Empty
}

// Drop places mark in the lowest empty cell of column and returns the row it
// landed on. The board is left untouched when an error is returned.
func (b *Board) Drop(column int, mark Mark) (int, error) {
	if mark != Player && mark != AI {
		return -1, fmt.Errorf("%w: %w %d", ErrInvalidMove, ErrInvalidMark, mark)
	}
	if column < 0 || column >= Columns {
		return -1, fmt.Errorf("%w: %w %d", ErrInvalidMove, ErrColumnOutOfRange, column)
	}

	for row := Rows - 1; row >= 0; row-- {
		if b[row][column] == Empty {
			b[row][column] = mark
			return row, nil
		}
	}

	return -1, fmt.Errorf("%w: %w %d", ErrInvalidMove, ErrColumnFull, column)
}

// Undo clears the topmost disk of column, reverting the latest Drop there.
func (b *Board) Undo(column int) error {
	if column < 0 || column >= Columns {
		return fmt.Errorf("%w: %w %d", ErrInvalidMove, ErrColumnOutOfRange, column)
	}

	for row := 0; row < Rows; row++ {
		if b[row][column] != Empty {
			b[row][column] = Empty
			return nil
		}
	}

	return fmt.Errorf("%w %d", ErrColumnEmpty, column)
}

func (b *Board) IsFull() bool {
	for c := 0; c < Columns; c++ {
		if b[0][c] == Empty {
			return false
		}
	}

	return true
}

// LegalMoves returns the playable columns in ascending order.
func (b *Board) LegalMoves() []int {
	moves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.IsLegal(col) {
			moves = append(moves, col)
		}
	}
	return moves
}

// Height returns how many disks are stacked in column.
func (b *Board) Height(column int) int {
	n := 0
	for row := Rows - 1; row >= 0 && b[row][column] != Empty; row-- {
		n++
	}
	return n
}

// DiskCount returns the number of disks on the board.
func (b *Board) DiskCount() int {
	n := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if b[row][col] != Empty {
				n++
			}
		}
	}
	return n
}

// Validate checks that every cell holds a known mark and that no disk sits
// above an empty cell. Boards built only through Drop always pass.
func (b *Board) Validate() error {
	for col := 0; col < Columns; col++ {
		seenEmpty := false
		for row := Rows - 1; row >= 0; row-- {
			switch b[row][col] {
			case Empty:
				seenEmpty = true
			case Player, AI:
				if seenEmpty {
					return fmt.Errorf("%w at row %d column %d", ErrFloatingDisk, row, col)
				}
			default:
				return fmt.Errorf("%w %d at row %d column %d", ErrInvalidMark, b[row][col], row, col)
			}
		}
	}
	return nil
}

// String renders the board top row first, one line per row.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			sb.WriteString(b[row][col].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ApplyMove is the checked entry point used by callers outside the search.
func ApplyMove(b *Board, column int, mark Mark) error {
	_, err := b.Drop(column, mark)
	return err
}

func IsLegalMove(b *Board, column int) bool {
	return b.IsLegal(column)
}

// BoardFromCells converts the wire representation (0 empty, 1 player, 2 AI,
// row 0 on top) into a Board and validates it.
func BoardFromCells(cells [][]int) (Board, error) {
	var b Board
	if len(cells) != Rows {
		return b, fmt.Errorf("expected %d rows, got %d", Rows, len(cells))
	}
	for row := range cells {
		if len(cells[row]) != Columns {
			return b, fmt.Errorf("row %d: expected %d columns, got %d", row, Columns, len(cells[row]))
		}
		for col, v := range cells[row] {
			b[row][col] = Mark(v)
		}
	}
	if err := b.Validate(); err != nil {
		return b, err
	}
	return b, nil
}

// Cells is the inverse of BoardFromCells.
func (b *Board) Cells() [][]int {
	cells := make([][]int, Rows)
	for row := range cells {
		cells[row] = make([]int, Columns)
		for col := range cells[row] {
			cells[row][col] = int(b[row][col])
		}
	}
	return cells
}

// ParseBoard reads the String form back: Rows lines of Columns characters
// using '.', 'X' and 'O', top row first.
func ParseBoard(lines ...string) (Board, error) {
	var b Board
	if len(lines) != Rows {
		return b, fmt.Errorf("expected %d rows, got %d", Rows, len(lines))
	}
	for row, line := range lines {
		if len(line) != Columns {
			return b, fmt.Errorf("row %d: expected %d columns, got %d", row, Columns, len(line))
		}
		for col := 0; col < Columns; col++ {
			switch line[col] {
			case '.':
				b[row][col] = Empty
			case 'X':
				b[row][col] = Player
			case 'O':
				b[row][col] = AI
			default:
				return b, fmt.Errorf("%w %q at row %d column %d", ErrInvalidMark, line[col], row, col)
			}
		}
	}
	if err := b.Validate(); err != nil {
		return b, err
	}
	return b, nil
}

// MustParseBoard is ParseBoard for fixtures known to be valid.
func MustParseBoard(lines ...string) Board {
	b, err := ParseBoard(lines...)
	if err != nil {
		panic(err)
	}
	return b
}
