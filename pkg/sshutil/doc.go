// Package sshutil reaches zone files and the NSD control command on a remote
// name server over SSH.
//
// # Overview
//
// The package provides three components:
//
//   - [Client]: one SSH connection with key or password authentication and
//     known_hosts verification
//   - [SFTPFileSystem]: reads, writes, renames and removes files over SFTP
//   - [SSHCommandRunner]: runs a command in a remote shell
//
// # Basic Usage
//
//	client, err := sshutil.NewClient(&sshutil.Config{
//		Host:           "ns1.home.arpa",
//		User:           "nsd",
//		KeyFile:        "/etc/leasezone/id_ed25519",
//		KnownHostsFile: "/etc/leasezone/known_hosts",
//	})
//	if err != nil {
//		return err
//	}
//	if err := client.Connect(ctx); err != nil {
//		return err
//	}
//	defer client.Close()
//
//	fs := sshutil.NewSFTPFileSystem(client)
//	if err := fs.Connect(ctx); err != nil {
//		return err
//	}
//	defer fs.Close()
//
//	data, err := fs.ReadFile("/var/lib/nsd/home.arpa.forward")
//
//	runner := sshutil.NewSSHCommandRunner(client)
//	err = runner.Run(ctx, "nsd-control reload")
//
// # Host Key Verification
//
// Host keys are checked against KnownHostsFile. Verification can only be
// turned off explicitly with InsecureIgnoreHostKey.
package sshutil
