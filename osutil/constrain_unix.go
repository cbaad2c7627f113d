//go:build !windows
// +build !windows

package osutil

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"
	"syscall"
)

// Constrain drops process privileges by switching to the nominated user and group and
// chrooting into the nominated directory. Each parameter is optional if empty.
//
// Ordering is what makes this safe. Name-to-id conversion happens first while
// /etc/passwd is still visible, then chroot while we still have the privilege to
// reach the directory, then supplementary groups are discarded as part of setgid
// while the uid is still powerful, and setuid comes last so the sequence cannot be
// unwound.
//
// Not implemented on Windows.
func Constrain(userName, groupName, chrootDir string) error {
	uid, gid, err := lookupIDs(userName, groupName)
	if err != nil {
		return err
	}

	if len(chrootDir) > 0 {
		if err := os.Chdir(chrootDir); err != nil {
			return fmt.Errorf("osutil.Constrain: cd %s: %w", chrootDir, err)
		}
		if err := syscall.Chroot(chrootDir); err != nil {
			return fmt.Errorf("osutil.Constrain: chroot %s: %w", chrootDir, err)
		}
		if err := os.Chdir("/"); err != nil {
			return fmt.Errorf("osutil.Constrain: cd /: %w", err)
		}
	}

	if gid != -1 {
		if err := syscall.Setgroups([]int{}); err != nil {
			return fmt.Errorf("osutil.Constrain: clear supplementary groups: %w", err)
		}
		if err := syscall.Setgid(gid); err != nil {
			return fmt.Errorf("osutil.Constrain: setgid %d/%s: %w", gid, groupName, err)
		}
	}

	if uid != -1 {
		if err := syscall.Setuid(uid); err != nil {
			return fmt.Errorf("osutil.Constrain: setuid %d/%s: %w", uid, userName, err)
		}
	}

	return nil
}

// lookupIDs resolves symbolic names to numeric ids, returning -1 for names not
// supplied.
func lookupIDs(userName, groupName string) (uid, gid int, err error) {
	uid = -1
	gid = -1

	if len(userName) > 0 {
		u, err := user.Lookup(userName)
		if err != nil {
			return -1, -1, fmt.Errorf("osutil.Constrain: user %s: %w", userName, err)
		}
		uid, err = strconv.Atoi(u.Uid)
		if err != nil {
			return -1, -1, fmt.Errorf("osutil.Constrain: uid %s is not numeric: %w",
				u.Uid, err)
		}
	}

	if len(groupName) > 0 {
		g, err := user.LookupGroup(groupName)
		if err != nil {
			return -1, -1, fmt.Errorf("osutil.Constrain: group %s: %w", groupName, err)
		}
		gid, err = strconv.Atoi(g.Gid)
		if err != nil {
			return -1, -1, fmt.Errorf("osutil.Constrain: gid %s is not numeric: %w",
				g.Gid, err)
		}
	}

	return uid, gid, nil
}

// ConstraintReport returns a printable summary of the process uid, gid, groups and
// working directory. Normally logged straight after Constrain to show what the query
// path now runs as.
func ConstraintReport() string {
	gList, _ := os.Getgroups()
	gStr := make([]string, 0, len(gList))
	for _, g := range gList {
		gStr = append(gStr, strconv.Itoa(g))
	}
	cwd, _ := os.Getwd()

	return fmt.Sprintf("uid=%d gid=%d (%s) cwd=%s",
		os.Getuid(), os.Getgid(), strings.Join(gStr, ","), cwd)
}
