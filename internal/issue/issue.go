// SPDX-License-Identifier: MPL-2.0

package issue

import "github.com/charmbracelet/glamour"

type Id int

const (
	PlatformMismatchId Id = iota + 1
	InsufficientPrivilegeId
	MissingPathId
	DeviceNotMountedId
	ExternalToolFailedId
	ToolNotFoundId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // tool documentation for the wrapped command
	extLinks []HttpLink  // external links that might be useful for the user
}

// Id returns the catalog key of the issue.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the unrendered help text.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the issue as terminal markdown. stylePath is a glamour
// style name ("dark", "light", "notty") or a path to a style JSON file.
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	platformMismatchIssue = &Issue{
		id: PlatformMismatchId,
		mdMsg: `
# Wrong platform!

This chore only runs on one operating system and the current host is not it.
Nothing was changed.

## Things you can try:
- Run the chore on the machine it was written for
- For ` + "`ereader-sync`" + `, set the expected platform in your config, or clear it to disable the check:
~~~cue
ereader: platform: ""
~~~`,
	}

	insufficientPrivilegeIssue = &Issue{
		id: InsufficientPrivilegeId,
		mdMsg: `
# Root privileges required!

The configured package manager installs into a system location and must be run as root.
Nothing was changed.

## Things you can try:
- Re-run the command with sudo:
~~~
$ sudo tidyup upgrade
~~~

- Switch to a package manager that runs unprivileged:
~~~cue
packages: manager: "homebrew"
~~~`,
		extLinks: []HttpLink{"https://guide.macports.org/#using.port"},
	}

	missingPathIssue = &Issue{
		id: MissingPathId,
		mdMsg: `
# Library not found!

The local library directory does not exist, so there is nothing to sync.

## Things you can try:
- Check ` + "`ereader.source`" + ` in your config (` + "`tidyup config show`" + `)
- ` + "`~`" + ` and ` + "`$VARIABLES`" + ` are expanded; make sure they resolve as expected
- Override it for one run:
~~~
$ TIDYUP_EREADER_SOURCE=~/Books tidyup ereader-sync
~~~`,
	}

	deviceNotMountedIssue = &Issue{
		id: DeviceNotMountedId,
		mdMsg: `
# E-reader not mounted!

The e-reader mount point does not exist. Nothing was copied or deleted.

## Things you can try:
- Connect the e-reader over USB and confirm the "connect to computer" prompt on the device
- Wait for the volume to appear and check its name:
~~~
$ ls /Volumes
~~~

- Point ` + "`ereader.mount`" + ` at the right volume in your config`,
	}

	externalToolFailedIssue = &Issue{
		id: ExternalToolFailedId,
		mdMsg: `
# External tool failed!

The wrapped tool ran but exited with a non-zero status. tidyup exits with the same status.

## Things you can try:
- Read the tool's output above; it usually names the failing package or file
- Re-run with ` + "`--verbose`" + ` to see the exact command line
- Run the printed command by hand to reproduce the failure`,
		docLinks: []HttpLink{"https://download.samba.org/pub/rsync/rsync.1"},
	}

	toolNotFoundIssue = &Issue{
		id: ToolNotFoundId,
		mdMsg: `
# Tool not found!

The executable tidyup tried to run is not installed or not on your PATH.

## Things you can try:
- Install the tool (MacPorts, Homebrew or rsync)
- Check your PATH, especially under sudo which may reset it:
~~~
$ sudo env | grep PATH
~~~

- Configure an absolute path:
~~~cue
packages: program: "/opt/local/bin/port"
ereader: rsync: "/usr/local/bin/rsync"
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Find the file that was used:
~~~
$ tidyup config path
~~~

- Compare it with the defaults:
~~~
$ tidyup config show
~~~

- Check TIDYUP_* environment variables, which override the file`,
		extLinks: []HttpLink{"https://cuelang.org/docs/tour/"},
	}

	issues = map[Id]*Issue{
		platformMismatchIssue.Id():      platformMismatchIssue,
		insufficientPrivilegeIssue.Id(): insufficientPrivilegeIssue,
		missingPathIssue.Id():           missingPathIssue,
		deviceNotMountedIssue.Id():      deviceNotMountedIssue,
		externalToolFailedIssue.Id():    externalToolFailedIssue,
		toolNotFoundIssue.Id():          toolNotFoundIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
	}
)

// Get returns the issue registered under id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
