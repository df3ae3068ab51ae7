/*
Package templater learns text templates from examples. A template is a text
with blanks. It alternates between blanks and literal texts, always starting
and ending with a blank:

	<blank> "<b> " <blank> " and " <blank> " </b>" <blank>

A template is learned from examples that share a common structure:

	t := templater.New()
	t.Learn("<b> a and b </b>")
	t.Learn("<b> c and d </b>")

The first example becomes the only literal of the template. Each further
example shrinks the literals to the texts they have in common with the
example. The longest common text is found first, then learning continues
left and right of it. Common texts can not span from one literal into the
next one and keep their order. With WithMinBlockSize common texts shorter
than the given number of runes are dropped, they become part of the
surrounding blanks.

Once learned, Parse extracts the blank contents from a text

	t.Parse("<b> spam and eggs </b>") // "", "spam", "eggs", ""

and Join fills blanks with values

	t.Join([]string{"", "x", "y", ""}) // "<b> x and y </b>"

# Text Form

A template can be written as text where a marker denotes each blank. With
the marker "|||" the above template is

	|||<b> ||| and ||| </b>|||

WithText creates a template from such a text, Save and Open write and read
it from files. Save appends a line break, Open ignores one leading and one
trailing line break.

# Binary Form

Dump and Load persist a template in a compact binary form that also keeps
the minimum block size. The binary form starts with the bytes "TPLR" and a
version number. There is no compatibility guarantee across versions.
*/
package templater
