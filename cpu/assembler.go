// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/k0kubun/pp/v3"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass macro assembler, with a final label link pass.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine  map[string]string   // Predefines
	expansions int                 // Count of macro expansions.
	Label      map[string]int      // Map of labels to addresses.
	Equate     map[string]string   // Map of equates.
	Macro      map[string](*Macro) // Map of macros.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// registerMap is a map of register names to operand words.
var registerMap = map[string]uint16{
	"r0": REGISTER_BASE + 0,
	"r1": REGISTER_BASE + 1,
	"r2": REGISTER_BASE + 2,
	"r3": REGISTER_BASE + 3,
	"r4": REGISTER_BASE + 4,
	"r5": REGISTER_BASE + 5,
	"r6": REGISTER_BASE + 6,
	"r7": REGISTER_BASE + 7,
}

var (
	reLabel     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
	reCharacter = regexp.MustCompile(`'(?:\\.|[^'\\])'`)
	reParen     = regexp.MustCompile(`\$\([^\$]*\)`)
	reString    = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)
)

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	v64, err := strconv.ParseUint(word, 0, 16)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = uint16(v64)

	return
}

// encode determines the operand word for a register, value, or label.
func (asm *Assembler) encode(word string, limit uint16) (code uint16, label string, err error) {
	code, ok := registerMap[word]
	if ok {
		return
	}

	value, perr := asm.valueOf(word)
	if perr == nil {
		if value > limit {
			err = ErrValueRange
			return
		}
		code = value
		return
	}

	if reLabel.MatchString(word) {
		// Linked after the last line is parsed.
		label = word
		return
	}

	err = ErrParseValue(word)
	return
}

// operand encodes a word according to its operand shape.
func (asm *Assembler) operand(operand Operand, word string) (code uint16, label string, err error) {
	if operand == OPERAND_REGISTER {
		var ok bool
		code, ok = registerMap[word]
		if !ok {
			err = ErrRegisterInvalid
		}
		return
	}

	return asm.encode(word, MAX_VALUE)
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value16 uint16
		value16, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(int(value16))
	}
	for key, ip := range asm.Label {
		pred[key] = starlark.MakeInt(ip)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	if st_int64 > 0xffff {
		err = ErrValueRange
		return
	}
	if st_int64 < 0 {
		// Negative results wrap, so $(-1) is the 15-bit decrement.
		st_int64 = ((st_int64 % MODULUS) + MODULUS) % MODULUS
	}
	value = uint16(st_int64)
	return
}

// stripComment removes a trailing ';' comment, ignoring quoted text.
func stripComment(text string) string {
	quoted := false
	for n := 0; n < len(text); n++ {
		switch text[n] {
		case '\\':
			if quoted {
				n++
			}
		case '"':
			quoted = !quoted
		case '\'':
			// Skip character literals, such as ';' or '\n'.
			if quoted {
				break
			}
			switch {
			case n+2 < len(text) && text[n+2] == '\'':
				n += 2
			case n+3 < len(text) && text[n+1] == '\\' && text[n+3] == '\'':
				n += 3
			}
		case ';':
			if !quoted {
				return text[:n]
			}
		}
	}

	return text
}

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do "string" expansions into .word lists
	line = reString.ReplaceAllStringFunc(line, func(quoted string) string {
		str, _err := strconv.Unquote(quoted)
		if _err != nil {
			err = ErrParseValue(quoted)
			return quoted
		}
		codes := make([]string, 0, len(str))
		for _, ch := range []byte(str) {
			codes = append(codes, fmt.Sprintf("%v", ch))
		}
		return strings.Join(codes, " ")
	})
	if err != nil {
		return
	}

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "'":
				str = "'"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !reLabel.MatchString(label) {
			err = ErrLabelInvalid
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentIp()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		// '@' labels are local to this expansion.
		local := fmt.Sprintf("%v_%v_", name, asm.expansions)
		asm.expansions++

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentIp gets the address of the next assembled word.
func (asm *Assembler) currentIp() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Ip + len(last.Codes)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.expansions = 0
	asm.Opcode = asm.Opcode[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, _cpu_defines)
	maps.Copy(asm.Equate, asm.predefine)

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(stripComment(text))
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		for _, link := range op.Links {
			ip, ok := asm.Label[link.Label]
			if !ok {
				lineno = op.LineNo
				line = strings.Join(op.Words, " ")
				err = ErrLabelMissing(link.Label)
				return
			}
			op.Codes[link.Index] = uint16(ip)
		}
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []uint16
	var links []Link

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := slices.Clone(words)

	defer func() {
		if err != nil || len(codes) == 0 {
			return
		}
		opcode := Opcode{LineNo: lineno, Ip: asm.currentIp(), Words: initial_words, Codes: codes, Links: links}
		if asm.Verbose {
			pp.Fprintf(os.Stderr, "adding %v @ %v\n", opcode.Words, opcode.Ip)
		}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	args := words[1:]

	// .word VALUE...
	// .string "TEXT", already expanded into values by parseLine()
	if words[0] == ".word" || words[0] == ".string" {
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, word := range args {
			var code uint16
			var label string
			code, label, err = asm.encode(word, 0xffff)
			if err != nil {
				return
			}
			if len(label) != 0 {
				links = append(links, Link{Index: len(codes), Label: label})
			}
			codes = append(codes, code)
		}
		return
	}

	op, ok := OpOf(words[0])
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	shape := op.Shape()
	switch {
	case len(args) < len(shape):
		err = ErrOpcodeValueMissing
		return
	case len(args) > len(shape):
		err = ErrOpcodeExtraArgs
		return
	}

	codes = append(codes, uint16(op))
	for n, operand := range shape {
		var code uint16
		var label string
		code, label, err = asm.operand(operand, args[n])
		if err != nil {
			return
		}
		if len(label) != 0 {
			links = append(links, Link{Index: len(codes), Label: label})
		}
		codes = append(codes, code)
	}

	return
}
